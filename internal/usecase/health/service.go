package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	classifier ClassifierChecker
}

// New creates a Service. classifier can be nil; search then runs in
// heuristic-only mode, which is degraded but functional.
func New(db DBPinger, classifier ClassifierChecker) *Service {
	return &Service{db: db, classifier: classifier}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.classifier != nil {
		if err := s.classifier.HealthCheck(ctx); err != nil {
			checks["classifier"] = CheckError
		} else {
			checks["classifier"] = CheckOK
		}
	}

	// Without the store the service cannot rank at all; classifier failure
	// only degrades synthesis to heuristics.
	status := Healthy
	switch {
	case checks["database"] == CheckError:
		status = Unhealthy
	case checks["classifier"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
