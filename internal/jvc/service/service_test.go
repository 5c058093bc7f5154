package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	libvirtlib "github.com/digitalocean/go-libvirt"
	"github.com/jimyag/jvc/internal/jvc/config"
	"github.com/jimyag/jvc/internal/jvc/repository"
	"github.com/jimyag/jvc/pkg/libvirt"
	"github.com/stretchr/testify/require"
)

// TestServices 包含测试所需的所有服务和依赖
type TestServices struct {
	Repo            *repository.Repository
	MockLibvirt     *libvirt.MockClient
	InstanceService *InstanceService
	TokenService    *TokenService
	ConsoleService  *ConsoleService
	Syncer          *InstanceSyncer
}

// setupTestServices 为每个测试用例创建独立的数据库和 mock client
func setupTestServices(t *testing.T) *TestServices {
	t.Helper()

	tmpDir := t.TempDir()
	repo, err := repository.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(tmpDir)
	})

	mockLibvirt := libvirt.NewMockClient()
	tokenService := NewTokenService(repo, 10*time.Minute)

	return &TestServices{
		Repo:            repo,
		MockLibvirt:     mockLibvirt,
		InstanceService: NewInstanceService(repo),
		TokenService:    tokenService,
		ConsoleService:  NewConsoleService(config.DefaultActions()[0], mockLibvirt, tokenService),
		Syncer:          NewInstanceSyncer(mockLibvirt, repo, tokenService, time.Minute),
	}
}

func testDomain(name string) libvirtlib.Domain {
	return libvirtlib.Domain{
		Name: name,
		UUID: libvirtlib.UUID{0x7c, 0x4e, 0x3e, 0x1e, 0x1c, 0x1a, 0x4b, 0x0e, 0x9d, 0x43, 0x3f, 0x0a, 0x1f, 0x3b, 0x2c, byte(len(name))},
		ID:   1,
	}
}
