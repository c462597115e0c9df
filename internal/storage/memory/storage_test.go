package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: 1, Username: "alice"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserRemovesUsernameIndex() {
	user := &model.User{ID: 1, Username: "alice"}
	_ = s.storage.SaveUser(s.ctx, user)

	err := s.storage.DeleteUser(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, 1)
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCountUsers() {
	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	_ = s.storage.SaveUser(s.ctx, &model.User{ID: 1, Username: "alice"})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: 2, Username: "bob"})

	count, err = s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Site tests

func (s *StorageSuite) TestSaveAndGetSite() {
	site := &model.Site{
		ID:       1,
		Name:     "My Blog",
		Slug:     "my-blog",
		SiteType: model.SiteWordPress,
		Status:   model.SitePending,
	}

	err := s.storage.SaveSite(s.ctx, site)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSite(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(site.Name, retrieved.Name)
	s.Equal(model.SitePending, retrieved.Status)
}

func (s *StorageSuite) TestGetSiteByName() {
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 1, Name: "My Blog"})

	retrieved, err := s.storage.GetSiteByName(s.ctx, "My Blog")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)

	_, err = s.storage.GetSiteByName(s.ctx, "Other")
	s.ErrorIs(err, model.ErrSiteNotFound)
}

func (s *StorageSuite) TestListSitesSorted() {
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 3, Name: "c"})
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 1, Name: "a"})
	_ = s.storage.SaveSite(s.ctx, &model.Site{ID: 2, Name: "b"})

	sites, err := s.storage.ListSites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sites, 3)
	s.Equal(int64(1), sites[0].ID)
	s.Equal(int64(2), sites[1].ID)
	s.Equal(int64(3), sites[2].ID)
}

// Database tests

func (s *StorageSuite) TestListDatabasesSiteFilter() {
	_ = s.storage.SaveDatabase(s.ctx, &model.Database{ID: 1, SiteID: 1, Name: "db_a"})
	_ = s.storage.SaveDatabase(s.ctx, &model.Database{ID: 2, SiteID: 2, Name: "db_b"})
	_ = s.storage.SaveDatabase(s.ctx, &model.Database{ID: 3, SiteID: 1, Name: "db_c"})

	all, err := s.storage.ListDatabases(s.ctx, storage.AllSites)
	s.Require().NoError(err)
	s.Len(all, 3)

	filtered, err := s.storage.ListDatabases(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(filtered, 2)
	s.Equal(int64(1), filtered[0].ID)
	s.Equal(int64(3), filtered[1].ID)
}

// Domain tests

func (s *StorageSuite) TestGetDomainByName() {
	_ = s.storage.SaveDomain(s.ctx, &model.Domain{ID: 1, SiteID: 1, Name: "example.com"})

	retrieved, err := s.storage.GetDomainByName(s.ctx, "example.com")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.ID)

	_, err = s.storage.GetDomainByName(s.ctx, "other.com")
	s.ErrorIs(err, model.ErrDomainNotFound)
}

func (s *StorageSuite) TestDeleteDomainRemovesNameIndex() {
	_ = s.storage.SaveDomain(s.ctx, &model.Domain{ID: 1, SiteID: 1, Name: "example.com"})

	err := s.storage.DeleteDomain(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetDomainByName(s.ctx, "example.com")
	s.ErrorIs(err, model.ErrDomainNotFound)
}

// Backup tests

func (s *StorageSuite) TestBackupLifecycle() {
	backup := &model.Backup{ID: 1, SiteID: 1, Filename: "my-blog-20260101.tar.gz", Status: "completed"}
	err := s.storage.SaveBackup(s.ctx, backup)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBackup(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(backup.Filename, retrieved.Filename)

	err = s.storage.DeleteBackup(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetBackup(s.ctx, 1)
	s.ErrorIs(err, model.ErrBackupNotFound)
}

// Audit tests

func (s *StorageSuite) TestAuditNewestFirstWithLimit() {
	for i := int64(1); i <= 5; i++ {
		_ = s.storage.SaveAuditEntry(s.ctx, &model.AuditEntry{
			ID:        i,
			Username:  "alice",
			Action:    model.AuditLogin,
			CreatedAt: time.Now(),
		})
	}

	entries, err := s.storage.ListAuditEntries(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(int64(5), entries[0].ID)
	s.Equal(int64(3), entries[2].ID)
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
