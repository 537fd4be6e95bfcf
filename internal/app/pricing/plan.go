package pricing

// Target is a priced row selected for a bulk operation.
type Target struct {
	ID        uint
	BasePrice float64
}

// Update is the mutation request produced for one target.
type Update struct {
	ID       uint    `json:"id"`
	OldPrice float64 `json:"old_price"`
	Band
}

// Plan produces one independent update per target, in input order.
func Plan(targets []Target, op Operation) []Update {
	updates := make([]Update, len(targets))
	for i, t := range targets {
		updates[i] = Update{
			ID:       t.ID,
			OldPrice: t.BasePrice,
			Band:     op.Transform(t.BasePrice),
		}
	}
	return updates
}
