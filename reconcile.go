package devtalk

// Reconcile resolves the displayed transcript after a stream completes.
//
// The policy is last-writer-wins: fetched replaces local entirely, including
// replies synthesized on the client, so ids, statuses and order always match
// what the transcript service persisted. Reconcile returns a copy of fetched
// and the number of local messages it superseded, that is local messages
// whose id does not appear in fetched or that were synthesized locally.
func Reconcile(local, fetched []Message) ([]Message, int) {
	ids := make(map[string]struct{}, len(fetched))
	for _, m := range fetched {
		ids[m.ID] = struct{}{}
	}
	var dropped int
	for _, m := range local {
		if _, ok := ids[m.ID]; m.Local || !ok {
			dropped++
		}
	}
	out := make([]Message, len(fetched))
	copy(out, fetched)
	return out, dropped
}
