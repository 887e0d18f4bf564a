package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/meshly/contactrank/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// --- keys.go tests ---

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "mykey")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "mykey"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "mykey")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	exists, err := s.Exists(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected true")
	}
}

func TestExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "mykey")).
		Return(mock.Result(mock.RedisInt64(0)))

	s := NewStoreForTest(c)
	exists, err := s.Exists(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected false")
	}
}

func TestScan_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// SCAN returns [cursor, [elements...]]
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0), // cursor=0 means done
			mock.RedisArray(mock.RedisString("key1"), mock.RedisString("key2")),
		)))

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "prefix:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42), // cursor=42 means more
					mock.RedisArray(mock.RedisString("key1")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0), // cursor=0 means done
				mock.RedisArray(mock.RedisString("key2")),
			))
		}).Times(2)

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "prefix:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

// --- json.go tests ---

func TestJSONSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.SET" && cmd[1] == "mykey" && cmd[2] == "$"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	err := s.JSONSet(context.Background(), "mykey", "$", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.SET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.JSONSet(context.Background(), "mykey", "$", []byte(`{"a":1}`))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestJSONSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c)
	err := s.JSONSetMulti(context.Background(), []db.JSONSetItem{
		{Key: "k1", Path: "$", Data: []byte(`{"a":1}`)},
		{Key: "k2", Path: "$", Data: []byte(`{"b":2}`)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.JSONSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.GET" && cmd[1] == "mykey"
		})).
		Return(mock.Result(mock.RedisString(`{"a":1}`)))

	s := NewStoreForTest(c)
	data, err := s.JSONGet(context.Background(), "mykey", "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestJSONGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.GET"
		})).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "mykey", "$")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestJSONGet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.GET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "mykey", "$")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, db.ErrKeyNotFound) {
		t.Error("should not be ErrKeyNotFound for network errors")
	}
}

func TestJSONGetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString(`{"a":1}`)),
			mock.Result(mock.RedisString(`{"b":2}`)),
		})

	s := NewStoreForTest(c)
	docs, err := s.JSONGetMulti(context.Background(), []string{"k1", "k2"}, "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if string(docs[0]) != `{"a":1}` || string(docs[1]) != `{"b":2}` {
		t.Errorf("unexpected docs: %s %s", docs[0], docs[1])
	}
}

func TestJSONGetMulti_MissingKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString(`{"a":1}`)),
			mock.Result(mock.RedisNil()),
		})

	s := NewStoreForTest(c)
	docs, err := s.JSONGetMulti(context.Background(), []string{"k1", "gone"}, "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(docs))
	}
	if docs[1] != nil {
		t.Errorf("expected nil entry for missing key, got %s", docs[1])
	}
}

func TestJSONGetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	docs, err := s.JSONGetMulti(context.Background(), nil, "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Errorf("expected nil, got %v", docs)
	}
}

// --- kv.go tests ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisBlobString("value")))

	s := NewStoreForTest(c)
	data, err := s.Get(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "value" {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "mykey")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "mykey", "myvalue")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.Set(context.Background(), "mykey", []byte("myvalue")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetWithTTL_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "mykey" && cmd[2] == "myvalue"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.SetWithTTL(context.Background(), "mykey", []byte("myvalue"), 60*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
