// Package contactrank provides an embedded Go client for the contactrank
// ranking engine backed by Redis with the JSON module.
//
// The client wires the full ranking pipeline in-process: weight synthesis,
// concurrent per-aspect scoring, and the substring fallback. An LLM
// classifier is optional; without one, weight synthesis runs on local
// heuristics.
//
//	client, _ := contactrank.New(ctx, contactrank.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	page, _ := client.Search(ctx, "user-1", "senior react developer", &contactrank.SearchOptions{
//	    Goal:  &contactrank.Goal{Type: contactrank.GoalJobSearch},
//	    Limit: 20,
//	})
//	for _, r := range page.Results {
//	    fmt.Println(r.ConnectionID, r.Score, r.Relevance)
//	}
package contactrank
