package http

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidateKeyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
