package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

// fakeRSVPRepo implements domain.RSVPRepository for tests.
type fakeRSVPRepo struct {
	byID   map[string]*domain.RSVP
	nextID int

	getErr         error
	createErr      error
	conflictOnce   bool
	duplicateOnce  bool
	updateErr      error
	createCalls    int
	updateCalls    int
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[string]*domain.RSVP)}
}

func (f *fakeRSVPRepo) put(r *domain.RSVP) *domain.RSVP {
	cp := *r
	f.byID[cp.ID] = &cp
	return &cp
}

func (f *fakeRSVPRepo) Create(ctx context.Context, r *domain.RSVP) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if f.duplicateOnce {
		// A concurrent request committed a row for the same email between
		// the caller's read and this insert.
		f.duplicateOnce = false
		f.nextID++
		f.byID[fmt.Sprintf("rsvp-%d", f.nextID)] = &domain.RSVP{
			ID:      fmt.Sprintf("rsvp-%d", f.nextID),
			Email:   r.Email,
			Name:    r.Name,
			Version: 1,
		}
		return domain.ErrDuplicate
	}
	f.nextID++
	r.ID = fmt.Sprintf("rsvp-%d", f.nextID)
	r.Version = 1
	f.put(r)
	return nil
}

func (f *fakeRSVPRepo) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRSVPRepo) GetByEmail(ctx context.Context, email string) (*domain.RSVP, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.byID {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) UpdateVersioned(ctx context.Context, r *domain.RSVP) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.conflictOnce {
		f.conflictOnce = false
		return domain.ErrVersionConflict
	}
	stored, ok := f.byID[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != r.Version {
		return domain.ErrVersionConflict
	}
	r.Version++
	f.put(r)
	return nil
}

func (f *fakeRSVPRepo) List(ctx context.Context) ([]*domain.RSVP, error) {
	out := make([]*domain.RSVP, 0, len(f.byID))
	for _, r := range f.byID {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRSVPRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAddressRepo implements domain.AddressRepository for tests.
type fakeAddressRepo struct {
	byID   map[string]*domain.GuestAddress
	nextID int

	getErr            error
	linkErr           error
	linkByEmailErr    error
	sameStreet        []*domain.GuestAddress
	sameStreetErr     error
	linkCalls         int
	linkByEmailCalls  int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{byID: make(map[string]*domain.GuestAddress)}
}

func (f *fakeAddressRepo) Create(ctx context.Context, a *domain.GuestAddress) error {
	f.nextID++
	a.ID = fmt.Sprintf("addr-%d", f.nextID)
	cp := *a
	f.byID[cp.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) GetByID(ctx context.Context, id string) (*domain.GuestAddress, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAddressRepo) GetByEmail(ctx context.Context, email string) (*domain.GuestAddress, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAddressRepo) Update(ctx context.Context, a *domain.GuestAddress) error {
	if _, ok := f.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	f.byID[cp.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) Link(ctx context.Context, addressID, rsvpID string) error {
	f.linkCalls++
	if f.linkErr != nil {
		return f.linkErr
	}
	a, ok := f.byID[addressID]
	if !ok {
		return domain.ErrNotFound
	}
	a.LinkedRSVPID = &rsvpID
	return nil
}

func (f *fakeAddressRepo) LinkByEmail(ctx context.Context, email, rsvpID string) (int, error) {
	f.linkByEmailCalls++
	if f.linkByEmailErr != nil {
		return 0, f.linkByEmailErr
	}
	n := 0
	for _, a := range f.byID {
		if a.Email == email {
			a.LinkedRSVPID = &rsvpID
			n++
		}
	}
	return n, nil
}

func (f *fakeAddressRepo) ListLinkedAtSameStreet(ctx context.Context, a *domain.GuestAddress) ([]*domain.GuestAddress, error) {
	if f.sameStreetErr != nil {
		return nil, f.sameStreetErr
	}
	return f.sameStreet, nil
}

func (f *fakeAddressRepo) List(ctx context.Context) ([]*domain.GuestAddress, error) {
	out := make([]*domain.GuestAddress, 0, len(f.byID))
	for _, a := range f.byID {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAddressRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEventRepo implements domain.WeddingEventRepository for tests.
type fakeEventRepo struct {
	events     []*domain.WeddingEvent
	responses  map[string]map[string]bool
	replaceErr error
	listErr    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{responses: make(map[string]map[string]bool)}
}

func (f *fakeEventRepo) ListEvents(ctx context.Context) ([]*domain.WeddingEvent, error) {
	return f.events, nil
}

func (f *fakeEventRepo) ReplaceResponses(ctx context.Context, rsvpID string, responses map[string]bool) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.responses[rsvpID] = responses
	return nil
}

func (f *fakeEventRepo) ListResponses(ctx context.Context, rsvpID string) (map[string]bool, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if r, ok := f.responses[rsvpID]; ok {
		return r, nil
	}
	return map[string]bool{}, nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	err  error
	sent []*domain.RSVPConfirmationEmailData
}

func (f *fakeEmailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestRSVPService() (domain.RSVPService, *fakeRSVPRepo, *fakeAddressRepo, *fakeEventRepo, *fakeEmailService) {
	rsvpRepo := newFakeRSVPRepo()
	addressRepo := newFakeAddressRepo()
	eventRepo := newFakeEventRepo()
	email := &fakeEmailService{}
	svc := NewRSVPService(testLogger(), rsvpRepo, addressRepo, eventRepo, email)
	return svc, rsvpRepo, addressRepo, eventRepo, email
}

func TestRSVPService_Upsert_CreatesNew(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, eventRepo, email := newTestRSVPService()

	res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name:      "Alex Rivera",
		Email:     " Alex@Example.COM ",
		Attending: true,
		AdditionalGuests: []domain.AdditionalGuest{
			{Name: "Jamie", MealChoice: "fish"},
			{Name: "   "},
		},
		EventResponses: map[string]bool{"ceremony": true, "brunch": false},
	})
	require.NoError(t, err)

	assert.False(t, res.IsUpdate)
	assert.Equal(t, 2, res.GuestCount)
	assert.Contains(t, res.Message, "party of 2")
	assert.Empty(t, res.Warnings)

	stored, err := rsvpRepo.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	require.Len(t, stored.AdditionalGuests, 1, "blank guest must be dropped")
	assert.True(t, stored.PlusOne)
	require.NotNil(t, stored.PlusOneName)
	assert.Equal(t, "Jamie", *stored.PlusOneName)

	assert.Equal(t, map[string]bool{"ceremony": true, "brunch": false}, eventRepo.responses[stored.ID])
	require.Len(t, email.sent, 1)
	assert.Equal(t, "alex@example.com", email.sent[0].Email)
	assert.False(t, email.sent[0].IsUpdate)
}

func TestRSVPService_Upsert_IdempotentByEmail(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, _, _ := newTestRSVPService()

	first, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: true,
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "ALEX@example.com", Attending: false,
	})
	require.NoError(t, err)

	assert.True(t, second.IsUpdate)
	assert.Equal(t, first.RSVP.ID, second.RSVP.ID)
	assert.Equal(t, 1, rsvpRepo.createCalls, "resubmission must not insert a second row")

	stored, err := rsvpRepo.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.False(t, stored.Attending)
}

func TestRSVPService_Upsert_FailsClosedOnLookupError(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, _, _ := newTestRSVPService()
	rsvpRepo.getErr = errors.New("connection refused")

	_, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: true,
	})
	require.Error(t, err)
	assert.Equal(t, 0, rsvpRepo.createCalls, "must not insert when the duplicate check is inconclusive")
}

func TestRSVPService_Upsert_RetriesOnVersionConflict(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, _, _ := newTestRSVPService()

	_, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: true,
	})
	require.NoError(t, err)

	rsvpRepo.conflictOnce = true
	res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: false,
	})
	require.NoError(t, err)
	assert.True(t, res.IsUpdate)
	assert.GreaterOrEqual(t, rsvpRepo.updateCalls, 2)
}

func TestRSVPService_Upsert_RecoversFromConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, _, _ := newTestRSVPService()

	// Two first-time submissions race: this one loses the insert, re-reads
	// the winner's row, and updates it instead of creating a second one.
	rsvpRepo.duplicateOnce = true
	res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: true,
	})
	require.NoError(t, err)
	assert.True(t, res.IsUpdate)
	assert.Len(t, rsvpRepo.byID, 1)
	assert.Equal(t, 1, rsvpRepo.createCalls)
	assert.True(t, rsvpRepo.byID[res.RSVP.ID].Attending)
}

func TestRSVPService_Upsert_ValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestRSVPService()

	_, err := svc.Upsert(ctx, domain.RSVPUpsertInput{Name: "", Email: "a@b.com", Attending: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Upsert(ctx, domain.RSVPUpsertInput{Name: "Alex", Email: "  ", Attending: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRSVPService_Upsert_EmailFailureIsAdvisory(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, _, email := newTestRSVPService()
	email.err = errors.New("ses unavailable")

	res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: true,
	})
	require.NoError(t, err, "email failure must not fail the RSVP write")
	assert.Contains(t, res.Warnings, "confirmation email could not be sent")

	_, err = rsvpRepo.GetByEmail(ctx, "alex@example.com")
	assert.NoError(t, err)
}

func TestRSVPService_Upsert_AddressPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("full payload creates and links", func(t *testing.T) {
		svc, _, addressRepo, _, _ := newTestRSVPService()

		res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
			Address: &domain.GuestAddressInput{
				Name:          "Alex Rivera",
				StreetAddress: "123 Main St",
				City:          "Portland",
				State:         "OR",
				PostalCode:    "97201",
			},
		})
		require.NoError(t, err)

		addr, err := addressRepo.GetByEmail(ctx, "alex@example.com")
		require.NoError(t, err)
		require.NotNil(t, addr.LinkedRSVPID)
		assert.Equal(t, res.RSVP.ID, *addr.LinkedRSVPID)
		assert.Equal(t, 0, addressRepo.linkByEmailCalls, "explicit payload wins over auto-link")
	})

	t.Run("existing address id links", func(t *testing.T) {
		svc, _, addressRepo, _, _ := newTestRSVPService()
		seed := &domain.GuestAddress{Email: "other@example.com", StreetAddress: "9 Elm"}
		require.NoError(t, addressRepo.Create(ctx, seed))

		res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
			ExistingAddressID: seed.ID,
		})
		require.NoError(t, err)

		linked, err := addressRepo.GetByID(ctx, seed.ID)
		require.NoError(t, err)
		require.NotNil(t, linked.LinkedRSVPID)
		assert.Equal(t, res.RSVP.ID, *linked.LinkedRSVPID)
	})

	t.Run("missing existing address id is fatal", func(t *testing.T) {
		svc, _, _, _, _ := newTestRSVPService()

		_, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
			ExistingAddressID: "nope",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("auto-link failure is advisory", func(t *testing.T) {
		svc, _, addressRepo, _, _ := newTestRSVPService()
		addressRepo.linkByEmailErr = errors.New("db timeout")

		res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
		})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "address could not be linked")
	})
}

func TestRSVPService_Upsert_SkipsEventResponsesWhenDeclining(t *testing.T) {
	ctx := context.Background()
	svc, rsvpRepo, _, eventRepo, _ := newTestRSVPService()

	_, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
		Name: "Alex", Email: "alex@example.com", Attending: false,
		EventResponses: map[string]bool{"ceremony": true},
	})
	require.NoError(t, err)

	stored, err := rsvpRepo.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.NotContains(t, eventRepo.responses, stored.ID)
}

func TestRSVPService_JoinHousehold(t *testing.T) {
	ctx := context.Background()

	t.Run("appends guest without a new record", func(t *testing.T) {
		svc, rsvpRepo, _, _, _ := newTestRSVPService()
		res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
		})
		require.NoError(t, err)

		joined, err := svc.JoinHousehold(ctx, domain.HouseholdJoinInput{
			HouseholdRSVPID: res.RSVP.ID,
			Name:            "  Sam  ",
			Email:           "sam@example.com",
			MealChoice:      "veggie",
		})
		require.NoError(t, err)
		assert.Equal(t, res.RSVP.ID, joined.HouseholdRSVPID)
		assert.Contains(t, joined.Message, "Alex")

		household, err := rsvpRepo.GetByID(ctx, res.RSVP.ID)
		require.NoError(t, err)
		require.Len(t, household.AdditionalGuests, 1)
		assert.Equal(t, "Sam", household.AdditionalGuests[0].Name)
		assert.True(t, household.PlusOne, "plus-one fields must track the appended guest")

		_, err = rsvpRepo.GetByEmail(ctx, "sam@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound, "joining must not create an RSVP row")
	})

	t.Run("unknown household", func(t *testing.T) {
		svc, _, _, _, _ := newTestRSVPService()
		_, err := svc.JoinHousehold(ctx, domain.HouseholdJoinInput{
			HouseholdRSVPID: "nope", Name: "Sam",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("name required", func(t *testing.T) {
		svc, _, _, _, _ := newTestRSVPService()
		_, err := svc.JoinHousehold(ctx, domain.HouseholdJoinInput{
			HouseholdRSVPID: "rsvp-1", Name: "  ",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("address link failure is advisory", func(t *testing.T) {
		svc, _, addressRepo, _, _ := newTestRSVPService()
		res, err := svc.Upsert(ctx, domain.RSVPUpsertInput{
			Name: "Alex", Email: "alex@example.com", Attending: true,
		})
		require.NoError(t, err)

		addressRepo.linkErr = errors.New("db timeout")
		joined, err := svc.JoinHousehold(ctx, domain.HouseholdJoinInput{
			HouseholdRSVPID:   res.RSVP.ID,
			Name:              "Sam",
			ExistingAddressID: "addr-1",
		})
		require.NoError(t, err, "the append already committed")
		assert.Contains(t, joined.Warnings, "address could not be linked")
	})
}

func TestUpsertMessage(t *testing.T) {
	assert.Contains(t, upsertMessage("Alex", true, false, 1), "received")
	assert.Contains(t, upsertMessage("Alex", true, false, 3), "party of 3")
	assert.Contains(t, upsertMessage("Alex", true, true, 1), "updated")
	assert.Contains(t, upsertMessage("Alex", false, false, 1), "sorry")
	assert.Contains(t, upsertMessage("Alex", false, true, 1), "updated")
}
