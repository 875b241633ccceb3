package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed for missing file: %v", err)
	}
	if sess.Authenticated {
		t.Error("missing file must yield an unauthenticated session")
	}
	if sess.Token != "" {
		t.Errorf("Token = %q, want empty", sess.Token)
	}
}

func TestStore_LoginPersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store := NewStore(path)
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	user := &User{Name: "Asha", Email: "asha@example.com", Organization: "Example Org"}
	if err := store.SetOnLogin("tok-123", user); err != nil {
		t.Fatalf("SetOnLogin failed: %v", err)
	}

	// A second store simulates the next CLI invocation
	reloaded := NewStore(path)
	sess, err := reloaded.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !sess.Authenticated {
		t.Error("session must be authenticated after login")
	}
	if sess.Token != "tok-123" {
		t.Errorf("Token = %q, want tok-123", sess.Token)
	}
	if sess.User == nil || sess.User.Email != "asha@example.com" {
		t.Errorf("User = %+v, want cached profile", sess.User)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	if err := store.SetOnLogin("tok", nil); err != nil {
		t.Fatalf("SetOnLogin failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestStore_UpdateUserKeepsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	if err := store.SetOnLogin("tok-keep", &User{Name: "Old"}); err != nil {
		t.Fatalf("SetOnLogin failed: %v", err)
	}

	if err := store.UpdateUser(&User{Name: "New", Phone: "+91 99999 99999"}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	sess := store.Current()
	if sess.Token != "tok-keep" {
		t.Errorf("Token = %q, want tok-keep", sess.Token)
	}
	if sess.User == nil || sess.User.Name != "New" {
		t.Errorf("User = %+v, want refreshed profile", sess.User)
	}
}

func TestStore_ClearOnLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	if err := store.SetOnLogin("tok", nil); err != nil {
		t.Fatalf("SetOnLogin failed: %v", err)
	}

	if err := store.ClearOnLogout(); err != nil {
		t.Fatalf("ClearOnLogout failed: %v", err)
	}
	if store.Current().Authenticated {
		t.Error("session must be unauthenticated after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file must be removed on logout")
	}

	// Logging out twice is not an error
	if err := store.ClearOnLogout(); err != nil {
		t.Fatalf("repeated ClearOnLogout failed: %v", err)
	}
}

func TestStore_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("prep failed: %v", err)
	}

	store := NewStore(path)
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed for corrupt file: %v", err)
	}
	if sess.Authenticated {
		t.Error("corrupt session must load as logged out")
	}
}
