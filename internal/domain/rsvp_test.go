package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPlusOne(t *testing.T) {
	t.Run("first guest becomes plus one", func(t *testing.T) {
		r := &RSVP{
			AdditionalGuests: []AdditionalGuest{
				{Name: "Jamie", MealChoice: "fish"},
				{Name: "Sam", MealChoice: "beef"},
			},
		}
		r.SyncPlusOne()

		assert.True(t, r.PlusOne)
		require.NotNil(t, r.PlusOneName)
		assert.Equal(t, "Jamie", *r.PlusOneName)
		require.NotNil(t, r.PlusOneMealChoice)
		assert.Equal(t, "fish", *r.PlusOneMealChoice)
	})

	t.Run("empty guest list clears plus one", func(t *testing.T) {
		name := "Jamie"
		meal := "fish"
		r := &RSVP{
			PlusOne:           true,
			PlusOneName:       &name,
			PlusOneMealChoice: &meal,
		}
		r.SyncPlusOne()

		assert.False(t, r.PlusOne)
		assert.Nil(t, r.PlusOneName)
		assert.Nil(t, r.PlusOneMealChoice)
	})
}

func TestPartySize(t *testing.T) {
	r := &RSVP{}
	assert.Equal(t, 1, r.PartySize())

	r.AdditionalGuests = []AdditionalGuest{{Name: "A"}, {Name: "B"}}
	assert.Equal(t, 3, r.PartySize())
}

func TestFilterGuests(t *testing.T) {
	in := []AdditionalGuest{
		{Name: "  Jamie  ", MealChoice: " fish "},
		{Name: "   "},
		{Name: ""},
		{Name: "Sam", IsChild: true},
	}
	out := FilterGuests(in)

	require.Len(t, out, 2)
	assert.Equal(t, AdditionalGuest{Name: "Jamie", MealChoice: "fish"}, out[0])
	assert.Equal(t, AdditionalGuest{Name: "Sam", IsChild: true}, out[1])
}

func TestFilterGuests_Empty(t *testing.T) {
	assert.Empty(t, FilterGuests(nil))
	assert.Empty(t, FilterGuests([]AdditionalGuest{{Name: " "}}))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "guest@example.com", NormalizeEmail("  Guest@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

// Each constructor must set only its own status's payload.
func TestLookupResultConstructors(t *testing.T) {
	rec := &RSVP{ID: "rsvp-1"}
	addr := &GuestAddress{ID: "addr-1"}
	households := []HouseholdRSVPSummary{{ID: "rsvp-2", Name: "Sam"}}

	existing := NewExistingRSVPLookup(rec, map[string]bool{"ceremony": true})
	assert.Equal(t, LookupExistingRSVP, existing.Status)
	assert.Same(t, rec, existing.RSVP)
	assert.Nil(t, existing.Address)
	assert.Nil(t, existing.HouseholdRSVPs)

	household := NewHouseholdFoundLookup(households)
	assert.Equal(t, LookupHouseholdFound, household.Status)
	assert.Nil(t, household.RSVP)
	assert.Nil(t, household.Address)
	assert.Equal(t, households, household.HouseholdRSVPs)

	address := NewAddressFoundLookup(addr)
	assert.Equal(t, LookupAddressFound, address.Status)
	assert.Nil(t, address.RSVP)
	assert.Same(t, addr, address.Address)
	assert.Nil(t, address.HouseholdRSVPs)

	fresh := NewNewGuestLookup()
	assert.Equal(t, LookupNewGuest, fresh.Status)
	assert.Nil(t, fresh.RSVP)
	assert.Nil(t, fresh.Address)
	assert.Nil(t, fresh.HouseholdRSVPs)
}
