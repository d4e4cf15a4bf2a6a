package dto

import "time"

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

type MeResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type FileInfo struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type ListUploadsResponse struct {
	Success bool        `json:"success"`
	Files   []*FileInfo `json:"files"`
}

type Dimensions struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type PurchaseRequest struct {
	ScaledDimensions *Dimensions `json:"scaledDimensions"`
	Address          string      `json:"address"`
	PostalCode       string      `json:"postalCode"`
	City             string      `json:"city"`
	ModelURL         string      `json:"modelUrl"`
	Quantity         int         `json:"quantity"`
}

type PurchaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GenerateRequest struct {
	TextPrompt string `json:"textPrompt"`
}

type GenerateResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields,omitempty"`
}
