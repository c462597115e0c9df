package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.Email, retrieved.Email)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: 1, Username: "alice"})

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)
}

func (s *StorageSuite) TestDeleteUserCleansIndexes() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: 1, Username: "alice"})

	err := s.storage.DeleteUser(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, 1)
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)

	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

// Site tests

func (s *StorageSuite) TestSiteLifecycle() {
	site := &model.Site{
		ID:       1,
		Name:     "My Blog",
		Slug:     "my-blog",
		SiteType: model.SiteWordPress,
		Status:   model.SitePending,
	}

	err := s.storage.SaveSite(s.ctx, site)
	s.Require().NoError(err)

	byName, err := s.storage.GetSiteByName(s.ctx, "My Blog")
	s.Require().NoError(err)
	s.Equal(int64(1), byName.ID)

	sites, err := s.storage.ListSites(s.ctx)
	s.Require().NoError(err)
	s.Len(sites, 1)

	err = s.storage.DeleteSite(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetSite(s.ctx, 1)
	s.ErrorIs(err, model.ErrSiteNotFound)
	_, err = s.storage.GetSiteByName(s.ctx, "My Blog")
	s.ErrorIs(err, model.ErrSiteNotFound)
}

func (s *StorageSuite) TestListSitesSorted() {
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 2, Name: "b"})
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 1, Name: "a"})

	sites, err := s.storage.ListSites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sites, 2)
	s.Equal(int64(1), sites[0].ID)
	s.Equal(int64(2), sites[1].ID)
}

// Database tests

func (s *StorageSuite) TestListDatabasesSiteFilter() {
	_ = s.storage.SaveDatabase(s.ctx, &model.Database{ID: 1, SiteID: 1, Name: "db_a"})
	_ = s.storage.SaveDatabase(s.ctx, &model.Database{ID: 2, SiteID: 2, Name: "db_b"})

	all, err := s.storage.ListDatabases(s.ctx, storage.AllSites)
	s.Require().NoError(err)
	s.Len(all, 2)

	filtered, err := s.storage.ListDatabases(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal(int64(2), filtered[0].ID)
}

// Domain tests

func (s *StorageSuite) TestDomainNameIndex() {
	_ = s.storage.SaveDomain(s.ctx, &model.Domain{ID: 1, SiteID: 1, Name: "example.com"})

	retrieved, err := s.storage.GetDomainByName(s.ctx, "example.com")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)

	err = s.storage.DeleteDomain(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetDomainByName(s.ctx, "example.com")
	s.ErrorIs(err, model.ErrDomainNotFound)
}

// Audit tests

func (s *StorageSuite) TestAuditNewestFirstWithLimit() {
	for i := int64(1); i <= 5; i++ {
		_ = s.storage.SaveAuditEntry(s.ctx, &model.AuditEntry{
			ID:        i,
			Username:  "alice",
			Action:    model.AuditLogin,
			CreatedAt: time.Now().UTC(),
		})
	}

	entries, err := s.storage.ListAuditEntries(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(int64(5), entries[0].ID)
	s.Equal(int64(4), entries[1].ID)
}

// Sequence tests

func (s *StorageSuite) TestNextIDPerSequence() {
	id1, err := s.storage.NextID(s.ctx, "site")
	s.Require().NoError(err)
	s.Equal(int64(1), id1)

	id2, err := s.storage.NextID(s.ctx, "site")
	s.Require().NoError(err)
	s.Equal(int64(2), id2)

	other, err := s.storage.NextID(s.ctx, "user")
	s.Require().NoError(err)
	s.Equal(int64(1), other)
}
