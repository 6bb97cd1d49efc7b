package growatt

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://server.growatt.com"

// Client talks to the Growatt server API.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	log      zerolog.Logger
}

func NewClient(baseURL, username, password string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// HashPassword reproduces the vendor's legacy password transform: the MD5
// hex digest with every '0' at an even index replaced by 'c'. The remap is a
// bit-for-bit compatibility requirement; do not "fix" it.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	digest := []byte(hex.EncodeToString(sum[:]))
	for i := 0; i < len(digest); i += 2 {
		if digest[i] == '0' {
			digest[i] = 'c'
		}
	}
	return string(digest)
}

// Plant is one monitored installation as reported by the vendor.
type Plant struct {
	PlantID      string `json:"plantId"`
	PlantName    string `json:"plantName"`
	Status       string `json:"status"`
	EnergyToday  string `json:"eToday"`
	EnergyMonth  string `json:"eMonth"`
	EnergyYear   string `json:"eYear"`
	EnergyTotal  string `json:"eTotal"`
	CurrentPower string `json:"currentPower"`
	CO2Reduction string `json:"co2"`
	Revenue      string `json:"moneyText"`
}

type loginResponse struct {
	Back struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Msg     string `json:"msg"`
	} `json:"back"`
}

type plantListResponse struct {
	Back struct {
		Success bool    `json:"success"`
		Data    []Plant `json:"data"`
	} `json:"back"`
}

// Login authenticates and returns a session token.
func (c *Client) Login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("userName", c.username)
	form.Set("password", HashPassword(c.password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/newTwoLoginAPI.do", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("growatt login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("growatt login: unexpected status %d", resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("growatt login decode: %w", err)
	}
	if !lr.Back.Success {
		return "", fmt.Errorf("growatt login rejected: %s", lr.Back.Msg)
	}
	return lr.Back.Token, nil
}

// PlantList fetches the generation metrics for every plant visible to the
// session.
func (c *Client) PlantList(ctx context.Context, token string) ([]Plant, error) {
	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/newTwoPlantAPI.do?op=getAllPlantList", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("growatt plant list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("growatt plant list: unexpected status %d", resp.StatusCode)
	}

	var pr plantListResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("growatt plant list decode: %w", err)
	}
	if !pr.Back.Success {
		return nil, fmt.Errorf("growatt plant list rejected")
	}
	return pr.Back.Data, nil
}
