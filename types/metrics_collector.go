package types

// MetricsCollector defines methods for recording allocation metrics.
//
// Implementations must be safe for concurrent use; the Allocator may serve several
// runs at once.
type MetricsCollector interface {
	// RecordAllocationDuration records the wall time of one allocation run.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	RecordAllocationDuration(duration float64)

	// RecordAllocationAttempt records the outcome of one allocation run.
	//
	// Parameters:
	//   - success: true if the run produced a result, false on any error
	RecordAllocationAttempt(success bool)

	// RecordPhaseRooms records how many rooms a phase placed.
	//
	// Parameters:
	//   - phase: Phase name ("discharge", "under_24", "over_24", "remaining")
	//   - count: Rooms placed by the phase
	RecordPhaseRooms(phase string, count int)

	// RecordCacheLookup records a result cache lookup.
	//
	// Parameters:
	//   - hit: true when a cached result was returned
	RecordCacheLookup(hit bool)
}
