package customerservice

// Car модель автомобиля из CustomerService
type Car struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
