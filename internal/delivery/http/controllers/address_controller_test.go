package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

// fakeStandardizer implements domain.AddressStandardizer for handler tests.
type fakeStandardizer struct {
	result *domain.StandardizedAddress
	err    error
}

func (f *fakeStandardizer) Standardize(ctx context.Context, in domain.GuestAddressInput) (*domain.StandardizedAddress, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeAddressService implements domain.AddressService for handler tests.
type fakeAddressService struct {
	addr    *domain.GuestAddress
	created bool
	err     error
}

func (f *fakeAddressService) CollectAddress(ctx context.Context, email string, in domain.GuestAddressInput) (*domain.GuestAddress, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.addr, f.created, nil
}

func TestValidateAddress(t *testing.T) {
	t.Run("missing street", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{"city": "Portland"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "street_address is required")
	})

	t.Run("standardized result", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{
			result: &domain.StandardizedAddress{
				StreetAddress: "123 MAIN ST",
				City:          "PORTLAND",
				State:         "OR",
				PostalCode:    "97201-1234",
			},
		})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{
			"street_address": "123 main street",
			"city":           "portland",
			"state":          "or",
			"postal_code":    "97201",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ValidateAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.IsValid)
		assert.True(t, resp.IsStandardized)
		assert.Equal(t, "123 MAIN ST", resp.StreetAddress)
	})

	t.Run("case-only difference is not standardized", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{
			result: &domain.StandardizedAddress{
				StreetAddress: "123 MAIN ST",
				City:          "PORTLAND",
				State:         "OR",
				PostalCode:    "97201",
			},
		})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{
			"street_address": "123 Main St",
			"city":           "Portland",
			"state":          "or",
			"postal_code":    "97201",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ValidateAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.IsValid)
		assert.False(t, resp.IsStandardized)
	})

	t.Run("not configured", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{err: domain.ErrNotConfigured})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{
			"street_address": "123 Main St",
			"city":           "Portland",
		})
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "unavailable")
	})

	t.Run("rejected address", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{
			err: fmt.Errorf("%w: Address Not Found.", domain.ErrInvalidInput),
		})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{
			"street_address": "1 Nowhere Ln",
			"city":           "Portland",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ValidateAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.IsValid)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("upstream outage degrades to invalid", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{
			err: errors.New("connection timeout"),
		})
		rr := postJSON(t, c.ValidateAddress, "/api/address/validate", map[string]string{
			"street_address": "123 Main St",
			"city":           "Portland",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ValidateAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.IsValid)
		assert.Contains(t, resp.Error, "temporarily unavailable")
	})
}

func TestCollectAddress(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{}, &fakeStandardizer{})
		rr := postJSON(t, c.CollectAddress, "/api/address", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "email is required")
	})

	t.Run("created", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{
			addr: &domain.GuestAddress{ID: "addr-1"}, created: true,
		}, &fakeStandardizer{})

		rr := postJSON(t, c.CollectAddress, "/api/address", map[string]any{
			"email": "alex@example.com",
			"address": map[string]string{
				"name":           "Alex",
				"street_address": "123 Main St",
			},
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp CollectAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "addr-1", resp.ID)
		assert.Contains(t, resp.Message, "saved")
	})

	t.Run("updated", func(t *testing.T) {
		c := NewAddressController(testLogger, &fakeAddressService{
			addr: &domain.GuestAddress{ID: "addr-1"}, created: false,
		}, &fakeStandardizer{})

		rr := postJSON(t, c.CollectAddress, "/api/address", map[string]any{
			"email": "alex@example.com",
			"address": map[string]string{
				"name":           "Alex",
				"street_address": "456 Oak Ave",
			},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp CollectAddressResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "updated")
	})
}
