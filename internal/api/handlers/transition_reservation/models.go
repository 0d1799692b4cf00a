package transition_reservation

// TransitionHTTPRequest тело запроса на смену статуса брони
// action приходит из пути, поэтому в теле только владелец и причина
type TransitionHTTPRequest struct {
	OwnerID int64   `json:"ownerId"`
	Reason  *string `json:"reason,omitempty"`
}
