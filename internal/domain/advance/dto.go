package advance

type AdvanceResponse struct {
	ID          string  `json:"id"`
	AdvanceDate string  `json:"advance_date"`
	Amount      string  `json:"amount"`
	Reason      *string `json:"reason,omitempty"`
}

func NewAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:          a.ID,
		AdvanceDate: a.AdvanceDate.Format("2006-01-02"),
		Amount:      a.Amount.StringFixed(2),
		Reason:      a.Reason,
	}
}
