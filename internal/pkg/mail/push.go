package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ManuelReschke/FacilityFox/internal/pkg/env"
)

// SendPush delivers a push message for the given device token via the
// configured push gateway (Expo-compatible). Without a configured gateway
// the message is logged and dropped.
func SendPush(token string, title string, body string) error {
	gateway := env.GetEnv("PUSH_GATEWAY_URL", "https://exp.host/--/api/v2/push/send")
	if gateway == "" {
		log.Printf("PUSH_GATEWAY_URL empty, dropping push for token %s", token)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"to":    token,
		"title": title,
		"body":  body,
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(gateway, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("Push send error: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
