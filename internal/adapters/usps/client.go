package usps

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"weddingplanner/internal/domain"
)

const defaultBaseURL = "https://secure.shippingapis.com/ShippingAPI.dll"

type httpStandardizer struct {
	client  *http.Client
	baseURL string
	userID  string
}

// NewHTTPStandardizer returns an AddressStandardizer backed by the USPS Web
// Tools Verify API. An empty userID yields ErrNotConfigured on every call.
func NewHTTPStandardizer(client *http.Client, baseURL, userID string) domain.AddressStandardizer {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &httpStandardizer{client: client, baseURL: baseURL, userID: userID}
}

// USPS request/response shapes. Note the Web Tools convention: Address1 is
// the secondary line (apt/suite) and Address2 is the street line.
type verifyRequest struct {
	XMLName xml.Name      `xml:"AddressValidateRequest"`
	UserID  string        `xml:"USERID,attr"`
	Address verifyAddress `xml:"Address"`
}

type verifyAddress struct {
	ID       string `xml:"ID,attr"`
	Address1 string `xml:"Address1"`
	Address2 string `xml:"Address2"`
	City     string `xml:"City"`
	State    string `xml:"State"`
	Zip5     string `xml:"Zip5"`
	Zip4     string `xml:"Zip4"`
}

type verifyResponse struct {
	XMLName xml.Name `xml:"AddressValidateResponse"`
	Address struct {
		Address1 string `xml:"Address1"`
		Address2 string `xml:"Address2"`
		City     string `xml:"City"`
		State    string `xml:"State"`
		Zip5     string `xml:"Zip5"`
		Zip4     string `xml:"Zip4"`
		Error    *struct {
			Description string `xml:"Description"`
		} `xml:"Error"`
	} `xml:"Address"`
}

func (s *httpStandardizer) Standardize(ctx context.Context, in domain.GuestAddressInput) (*domain.StandardizedAddress, error) {
	if s.userID == "" {
		return nil, domain.ErrNotConfigured
	}

	payload := verifyRequest{
		UserID: s.userID,
		Address: verifyAddress{
			ID:       "0",
			Address1: in.StreetAddress2,
			Address2: in.StreetAddress,
			City:     in.City,
			State:    in.State,
			Zip5:     zip5(in.PostalCode),
		},
	}
	raw, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode verify request: %w", err)
	}

	q := url.Values{}
	q.Set("API", "Verify")
	q.Set("XML", string(raw))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from usps: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usps api returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read usps response: %w", err)
	}

	var out verifyResponse
	if err := xml.Unmarshal(body, &out); err != nil {
		// Top-level <Error> (bad credentials, malformed request) doesn't
		// match AddressValidateResponse.
		var topErr struct {
			XMLName     xml.Name `xml:"Error"`
			Description string   `xml:"Description"`
		}
		if xml.Unmarshal(body, &topErr) == nil && topErr.Description != "" {
			return nil, fmt.Errorf("usps error: %s", strings.TrimSpace(topErr.Description))
		}
		return nil, fmt.Errorf("failed to decode usps response: %w", err)
	}
	if out.Address.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.TrimSpace(out.Address.Error.Description))
	}

	postal := out.Address.Zip5
	if out.Address.Zip4 != "" {
		postal = postal + "-" + out.Address.Zip4
	}
	return &domain.StandardizedAddress{
		StreetAddress:  out.Address.Address2,
		StreetAddress2: out.Address.Address1,
		City:           out.Address.City,
		State:          out.Address.State,
		PostalCode:     postal,
	}, nil
}

func zip5(postal string) string {
	postal = strings.TrimSpace(postal)
	if i := strings.IndexByte(postal, '-'); i >= 0 {
		postal = postal[:i]
	}
	if len(postal) > 5 {
		postal = postal[:5]
	}
	return postal
}
