// Package capacity computes per-nurse room quotas.
package capacity

// Plan returns the room quota for each of nurseCount nurses.
//
// The first roomCount%nurseCount nurses (ids 1..remainder) receive one room more than
// the rest, so quotas always sum to roomCount and differ by at most one.
//
// Parameters:
//   - roomCount: Total rooms to allocate (>= 0)
//   - nurseCount: Number of nurses; values < 1 are a caller error and yield nil
//
// Returns:
//   - []int: Quotas indexed by nurse position (nurse id - 1)
//
// Example:
//
//	capacity.Plan(7, 3) // [3 2 2]
func Plan(roomCount, nurseCount int) []int {
	if nurseCount < 1 {
		return nil
	}

	base := roomCount / nurseCount
	remainder := roomCount % nurseCount

	quotas := make([]int, nurseCount)
	for i := range quotas {
		quotas[i] = base
		if i < remainder {
			quotas[i]++
		}
	}

	return quotas
}

// Total returns the sum of the quotas.
func Total(quotas []int) int {
	total := 0
	for _, q := range quotas {
		total += q
	}

	return total
}
