//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"time"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/session"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"
	"cedra-backend/internal/usecase/shared"
)

// fakeStore is an in-memory credential store shared by the read-side and
// write-side fakes so that transactional writes are visible to follow-up
// reads in the same test.
type fakeStore struct {
	users       map[string]*queries.UserView // keyed by id
	memberships []company.Membership
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*queries.UserView)}
}

func (s *fakeStore) addUser(u queries.UserView) {
	cp := u
	s.users[u.ID] = &cp
}

func (s *fakeStore) addMembership(m company.Membership) {
	s.memberships = append(s.memberships, m)
}

func membership(userID string, companyID int64, role string) company.Membership {
	return company.Membership{
		UserID:    userID,
		CompanyID: companyID,
		Role:      company.NormalizeRole(role),
	}
}

type fakeUserReadStore struct{ store *fakeStore }

func (f *fakeUserReadStore) FindByID(_ context.Context, id string) (*queries.UserView, error) {
	if u, ok := f.store.users[id]; ok {
		return u, nil
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (f *fakeUserReadStore) FindByEmail(_ context.Context, email string) (*queries.UserView, error) {
	for _, u := range f.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

type fakeMembershipReadStore struct{ store *fakeStore }

func (f *fakeMembershipReadStore) ListByUser(_ context.Context, userID string) ([]company.Membership, error) {
	var out []company.Membership
	for _, m := range f.store.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipReadStore) Find(_ context.Context, userID string, companyID int64) (*company.Membership, error) {
	for _, m := range f.store.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			return &m, nil
		}
	}
	return nil, infra.WrapRepoErr("membership not found", nil, infra.KindNotFound)
}

type fakeCompanyReadStore struct {
	companies map[int64]*queries.CompanyView
}

func (f *fakeCompanyReadStore) FindByID(_ context.Context, id int64) (*queries.CompanyView, error) {
	if c, ok := f.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, infra.WrapRepoErr("company not found", nil, infra.KindNotFound)
}

// fakeUnitOfWork applies writes to a staging copy and merges into the store
// only when fn succeeds, mirroring commit/rollback. upsertErr makes the
// membership write inside the transaction fail.
type fakeUnitOfWork struct {
	store     *fakeStore
	upsertErr error
}

func (u *fakeUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	staged := newFakeStore()
	for id, user := range u.store.users {
		cp := *user
		staged.users[id] = &cp
	}
	staged.memberships = append([]company.Membership(nil), u.store.memberships...)

	if err := fn(ctx, &fakeTx{store: staged, upsertErr: u.upsertErr}); err != nil {
		return err
	}

	u.store.users = staged.users
	u.store.memberships = staged.memberships
	return nil
}

type fakeTx struct {
	store     *fakeStore
	upsertErr error
}

func (t *fakeTx) Users() shared.UserRepository { return &fakeUserRepo{store: t.store} }
func (t *fakeTx) Memberships() shared.MembershipRepository {
	return &fakeMembershipRepo{store: t.store, upsertErr: t.upsertErr}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u shared.NewUser) error {
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	r.store.addUser(queries.UserView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		IsSuspended:  u.IsSuspended,
		Provider:     u.Provider,
	})
	return nil
}

func (r *fakeUserRepo) FindIDByEmail(_ context.Context, email string) (string, error) {
	for id, u := range r.store.users {
		if u.Email == email {
			return id, nil
		}
	}
	return "", nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	u, ok := r.store.users[userID]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	u.PasswordHash = &hash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	delete(r.store.users, userID)
	return nil
}

type fakeMembershipRepo struct {
	store     *fakeStore
	upsertErr error
}

func (r *fakeMembershipRepo) Upsert(_ context.Context, m company.Membership) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i, existing := range r.store.memberships {
		if existing.UserID == m.UserID && existing.CompanyID == m.CompanyID {
			r.store.memberships[i].Role = m.Role
			return nil
		}
	}
	r.store.addMembership(m)
	return nil
}

func (r *fakeMembershipRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := r.store.memberships[:0]
	for _, m := range r.store.memberships {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.store.memberships = kept
	return nil
}

type fakeIssuer struct {
	created     []string
	invalidated []string
	purgedUsers []string
}

func (f *fakeIssuer) Create(_ context.Context, userID string) (*session.Session, error) {
	f.created = append(f.created, userID)
	return &session.Session{
		ID:        fmt.Sprintf("sess-%d", len(f.created)),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeIssuer) Validate(_ context.Context, _ string) (*session.Session, error) {
	return nil, nil
}

func (f *fakeIssuer) Invalidate(_ context.Context, token string) error {
	f.invalidated = append(f.invalidated, token)
	return nil
}

func (f *fakeIssuer) InvalidateUserSessions(_ context.Context, userID string) error {
	f.purgedUsers = append(f.purgedUsers, userID)
	return nil
}

type sentMail struct {
	kind string
	to   string
}

type fakeMailer struct {
	sent    []sentMail
	failAll bool
}

func (f *fakeMailer) SendAccountInvite(_ context.Context, to, _ string) error {
	if f.failAll {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{kind: "invite", to: to})
	return nil
}

func (f *fakeMailer) SendCompanyNotice(_ context.Context, to, _ string) error {
	if f.failAll {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{kind: "notice", to: to})
	return nil
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, _, _ string) error {
	if f.failAll {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{kind: "reset", to: to})
	return nil
}

type fakeAddressRepo struct {
	rows   []commands.NewAddress
	nextID int64
}

func (f *fakeAddressRepo) Create(_ context.Context, a commands.NewAddress) (int64, error) {
	f.rows = append(f.rows, a)
	f.nextID++
	return f.nextID, nil
}

type fakePaymentGateway struct {
	amounts    []int64
	currencies []string
	err        error
}

func (f *fakePaymentGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.amounts = append(f.amounts, amount)
	f.currencies = append(f.currencies, currency)
	return fmt.Sprintf("pi_%d_secret", amount), nil
}
