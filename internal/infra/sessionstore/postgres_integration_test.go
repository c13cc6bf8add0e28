//go:build integration

package sessionstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/infra/readstore"
	"cedra-backend/internal/infra/sessionstore"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/usecase/queries"

	"github.com/docker/go-connections/nat"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "test"
	pgPassword = "test"
	pgDatabase = "test_db"
)

type PostgresSuite struct {
	suite.Suite
	container testcontainers.Container
	pool      *pgxpool.Pool
	clock     *clock.MockClock
	issuer    *sessionstore.PostgresIssuer
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	port := nat.Port("5432/tcp")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			WaitingFor: wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	mapped, err := container.MappedPort(ctx, port)
	s.Require().NoError(err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, host, mapped.Port(), pgDatabase)

	s.Require().NoError(db.RunMigrations(dsn))

	pool, err := pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.pool = pool

	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.issuer = sessionstore.New(pool, s.clock, 720*time.Hour)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresSuite) SetupTest() {
	ctx := context.Background()
	for _, table := range []string{"addresses", "user_sessions", "company_users", "companies", "users"} {
		_, err := s.pool.Exec(ctx, "DELETE FROM "+table)
		s.Require().NoError(err)
	}
	s.clock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func (s *PostgresSuite) seedUser(id, email string) {
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name) VALUES ($1, $2, $3)`, id, email, "Test User")
	s.Require().NoError(err)
}

func (s *PostgresSuite) seedCompany(name string) int64 {
	var id int64
	err := s.pool.QueryRow(context.Background(),
		`INSERT INTO companies (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *PostgresSuite) seedMembership(userID string, companyID int64, role string) {
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO company_users (user_id, company_id, role) VALUES ($1, $2, $3)`,
		userID, companyID, role)
	s.Require().NoError(err)
}

func (s *PostgresSuite) TestSessionLifecycle() {
	ctx := context.Background()
	s.seedUser("u1", "u1@example.com")

	sess, err := s.issuer.Create(ctx, "u1")
	s.Require().NoError(err)
	s.Len(sess.ID, 40)
	s.Equal("u1", sess.UserID)
	s.False(sess.Fresh)

	validated, err := s.issuer.Validate(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(validated)
	s.Equal("u1", validated.UserID)
	s.False(validated.Fresh)

	s.Require().NoError(s.issuer.Invalidate(ctx, sess.ID))
	gone, err := s.issuer.Validate(ctx, sess.ID)
	s.Require().NoError(err)
	s.Nil(gone)

	// Idempotent on an already removed token.
	s.Require().NoError(s.issuer.Invalidate(ctx, sess.ID))
}

func (s *PostgresSuite) TestSlidingWindowExtension() {
	ctx := context.Background()
	s.seedUser("u1", "u1@example.com")

	sess, err := s.issuer.Create(ctx, "u1")
	s.Require().NoError(err)

	// Inside the first half of the lifetime nothing changes.
	s.clock.Add(100 * time.Hour)
	validated, err := s.issuer.Validate(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(validated)
	s.False(validated.Fresh)

	// Past the half-way point the expiry slides forward.
	s.clock.Add(300 * time.Hour)
	extended, err := s.issuer.Validate(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(extended)
	s.True(extended.Fresh)
	s.True(extended.ExpiresAt.After(sess.ExpiresAt))
}

func (s *PostgresSuite) TestExpiredSessionIsDeletedOnSight() {
	ctx := context.Background()
	s.seedUser("u1", "u1@example.com")

	sess, err := s.issuer.Create(ctx, "u1")
	s.Require().NoError(err)

	s.clock.Add(721 * time.Hour)
	validated, err := s.issuer.Validate(ctx, sess.ID)
	s.Require().NoError(err)
	s.Nil(validated)

	var count int
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM user_sessions WHERE id = $1`, sess.ID).Scan(&count)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresSuite) TestInvalidateUserSessions() {
	ctx := context.Background()
	s.seedUser("u1", "u1@example.com")
	s.seedUser("u2", "u2@example.com")

	first, err := s.issuer.Create(ctx, "u1")
	s.Require().NoError(err)
	second, err := s.issuer.Create(ctx, "u1")
	s.Require().NoError(err)
	other, err := s.issuer.Create(ctx, "u2")
	s.Require().NoError(err)

	s.Require().NoError(s.issuer.InvalidateUserSessions(ctx, "u1"))

	for _, token := range []string{first.ID, second.ID} {
		sess, err := s.issuer.Validate(ctx, token)
		s.Require().NoError(err)
		s.Nil(sess)
	}

	kept, err := s.issuer.Validate(ctx, other.ID)
	s.Require().NoError(err)
	s.NotNil(kept)
}

func (s *PostgresSuite) TestAddressVisibility() {
	ctx := context.Background()

	s.seedUser("member", "member@example.com")
	s.seedUser("colleague", "colleague@example.com")
	s.seedUser("outsider", "outsider@example.com")
	companyID := s.seedCompany("Cedra SARL")
	s.seedMembership("member", companyID, "employee")
	s.seedMembership("colleague", companyID, "employee")

	insert := func(street string, userID *string, companyID *int64) {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO addresses (street, postal_code, city, country, user_id, company_id)
			VALUES ($1, '75002', 'Paris', 'France', $2, $3)`, street, userID, companyID)
		s.Require().NoError(err)
	}

	member := "member"
	colleague := "colleague"
	outsider := "outsider"
	insert("personal", &member, nil)
	insert("shared company", nil, &companyID)
	insert("private company", &member, &companyID)
	insert("colleague private", &colleague, &companyID)
	insert("other personal", &outsider, nil)

	store := readstore.NewAddressReadStore(s.pool)
	views, err := store.ListVisibleToUser(ctx, "member")
	s.Require().NoError(err)

	var got []struct {
		Street string
		Type   string
	}
	for _, v := range views {
		got = append(got, struct {
			Street string
			Type   string
		}{v.Street, v.Type})
	}

	// Newest first.
	want := []struct {
		Street string
		Type   string
	}{
		{"private company", "both"},
		{"shared company", "company"},
		{"personal", "user"},
	}

	s.Empty(cmp.Diff(want, got))

	// The colleague sees the shared address but not the member's private one.
	colleagueViews, err := store.ListVisibleToUser(ctx, "colleague")
	s.Require().NoError(err)

	var colleagueStreets []string
	for _, v := range colleagueViews {
		colleagueStreets = append(colleagueStreets, v.Street)
	}
	s.Empty(cmp.Diff([]string{"colleague private", "shared company"}, colleagueStreets))
}

func (s *PostgresSuite) TestIdentityResolution() {
	ctx := context.Background()

	s.seedUser("worker", "worker@example.com")
	alpha := s.seedCompany("Alpha")
	beta := s.seedCompany("Beta")
	s.seedMembership("worker", alpha, "employee")
	s.seedMembership("worker", beta, " ADMIN ")

	resolver := queries.NewIdentityQueries(
		readstore.NewUserReadStore(s.pool),
		readstore.NewMembershipReadStore(s.pool),
		readstore.NewCompanyReadStore(s.pool),
	)

	identity, err := resolver.Resolve(ctx, "worker")
	s.Require().NoError(err)

	// The admin membership wins over the lower company id.
	want := &queries.ResolvedIdentity{
		UserID:         "worker",
		Email:          "worker@example.com",
		Name:           "Test User",
		IsCompanyAdmin: true,
		CompanyID:      &beta,
	}
	s.Empty(cmp.Diff(want, identity, cmpopts.IgnoreFields(queries.ResolvedIdentity{}, "CompanyName")))
	s.Require().NotNil(identity.CompanyName)
	s.Equal("Beta", *identity.CompanyName)
}
