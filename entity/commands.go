package entity

type TakePayment struct {
	Header    EventHeader `json:"header"`
	AccountID int64       `json:"account_id"`
	Amount    int         `json:"amount"`
}

type ReserveSeats struct {
	Header    EventHeader `json:"header"`
	AccountID int64       `json:"account_id"`
	Seats     int         `json:"seats"`
}
