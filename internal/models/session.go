package models

import "time"

// Session is one device's authenticated hold on an account. The refresh
// token is stored hashed; the plaintext only ever travels to the client.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	DeviceID         string    `json:"deviceId"`
	DeviceName       string    `json:"deviceName"`
	RefreshTokenHash []byte    `json:"refreshTokenHash"`
	IPAddress        string    `json:"ipAddress"`
	UserAgent        string    `json:"userAgent"`
	CreatedAt        time.Time `json:"createdAt"`
	LastSeenAt       time.Time `json:"lastSeenAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}
