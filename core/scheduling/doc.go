package scheduling

// Package scheduling allocates arriving trains to a homogeneous pool of
// tracks within a bounded time horizon, minimising priority-weighted delay
// while keeping a safety headway between consecutive occupancies of the same
// track. The pipeline is: derive traversal durations, greedy assignment,
// bounded swap-based improvement, and aggregate metric computation. A
// disruption (train delay or track block) produces modified scenario copies
// that are rescheduled from scratch; the originals are never mutated.
