package ledger

// SpliceOrder inserts movedID into ids at position and returns the final
// order for one date group. ids must already be sorted by (sequence, id)
// ascending and must not contain movedID. position is the logical ascending
// index; callers showing a descending register convert their visual drop
// index before calling. Out-of-range positions are clamped.
func SpliceOrder(ids []int64, movedID int64, position int) []int64 {
	if position < 0 {
		position = 0
	}

	if position > len(ids) {
		position = len(ids)
	}

	order := make([]int64, 0, len(ids)+1)
	order = append(order, ids[:position]...)
	order = append(order, movedID)
	order = append(order, ids[position:]...)

	return order
}
