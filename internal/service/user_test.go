package service

import (
	"errors"
	"fmt"
	"testing"

	"blog/internal/models"
)

func TestUserList_Search(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)

	seedUser(t, gdb, "Alice", "Nguyen", "abc@gmail.com")
	seedUser(t, gdb, "Bob", "Tran", "bob@example.com")
	seedUser(t, gdb, "Carol", "Le", "carol@example.com")

	t.Run("match by email substring", func(t *testing.T) {
		page, err := svc.List(1, 10, "abc@gmail.com")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 1 {
			t.Fatalf("List() returned %d users, want 1", len(page.Data))
		}
		if page.Data[0].Email != "abc@gmail.com" {
			t.Errorf("List() email = %v, want abc@gmail.com", page.Data[0].Email)
		}
	})

	t.Run("match by last name substring", func(t *testing.T) {
		page, err := svc.List(1, 10, "Tran")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 1 || page.Data[0].FirstName != "Bob" {
			t.Errorf("List() = %+v, want only Bob", page.Data)
		}
	})

	t.Run("no match", func(t *testing.T) {
		page, err := svc.List(1, 10, "zzz-nothing")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 0 || page.Total != 0 {
			t.Errorf("List() = %+v, want empty page", page)
		}
	})

	t.Run("empty search returns all", func(t *testing.T) {
		page, err := svc.List(1, 10, "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if page.Total != 3 {
			t.Errorf("List() total = %d, want 3", page.Total)
		}
	})
}

func TestUserList_PaginationDefaults(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)

	for i := 0; i < 12; i++ {
		seedUser(t, gdb, "User", "Number", fmt.Sprintf("user%02d@example.com", i))
	}

	// Absent or non-numeric inputs arrive here as zero values.
	page, err := svc.List(0, 0, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", page.CurrentPage)
	}
	if len(page.Data) != 10 {
		t.Errorf("page size = %d, want default 10", len(page.Data))
	}
	if page.LastPage != 2 {
		t.Errorf("LastPage = %d, want 2", page.LastPage)
	}
	if page.NextPage == nil || *page.NextPage != 2 {
		t.Errorf("NextPage = %v, want 2", page.NextPage)
	}
	if page.PrevPage != nil {
		t.Errorf("PrevPage = %v, want null on first page", page.PrevPage)
	}
}

func TestUserList_ExcludesSensitiveFields(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")

	page, err := svc.List(1, 10, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("List() returned %d users, want 1", len(page.Data))
	}
	// UserSummary carries no password or refresh token field at all;
	// assert the projection still has the public fields populated.
	u := page.Data[0]
	if u.ID == 0 || u.Email == "" || u.FirstName == "" {
		t.Errorf("List() projection incomplete: %+v", u)
	}
}

func TestUserGet(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	seeded := seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")

	user, err := svc.Get(seeded.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Get() email = %v, want alice@example.com", user.Email)
	}

	if _, err := svc.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	seeded := seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")

	newName := "Alicia"
	status := 0
	if err := svc.Update(seeded.ID, UpdateUserInput{FirstName: &newName, Status: &status}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	user, err := svc.Get(seeded.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if user.FirstName != "Alicia" {
		t.Errorf("FirstName = %v, want Alicia", user.FirstName)
	}
	if user.Status != 0 {
		t.Errorf("Status = %v, want 0", user.Status)
	}
	if user.LastName != "Nguyen" {
		t.Errorf("LastName = %v, want unchanged Nguyen", user.LastName)
	}

	if err := svc.Update(9999, UpdateUserInput{FirstName: &newName}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(absent) error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	seeded := seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")

	if err := svc.Delete(seeded.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(seeded.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(seeded.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(absent) error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete_CascadesPosts(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	author := seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")
	other := seedUser(t, gdb, "Bob", "Tran", "bob@example.com")
	cat := seedCategory(t, gdb, "go")

	seed := func(userID uint, title string) {
		post := models.Post{Title: title, Description: "body", Thumbnail: "t.png", UserID: userID, CategoryID: cat.ID}
		if err := gdb.Create(&post).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}
	seed(author.ID, "First")
	seed(author.ID, "Second")
	seed(other.ID, "Kept")

	if err := svc.Delete(author.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var count int64
	if err := gdb.Model(&models.Post{}).Where("user_id = ?", author.ID).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Errorf("posts remaining after user delete = %d, want 0", count)
	}
	if err := gdb.Model(&models.Post{}).Where("user_id = ?", other.ID).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 1 {
		t.Errorf("other user's posts = %d, want 1", count)
	}
}

func TestUserUpdateAvatar(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewUserService(gdb)
	seeded := seedUser(t, gdb, "Alice", "Nguyen", "alice@example.com")

	if err := svc.UpdateAvatar(seeded.ID, "uploads/avatar/abc.png"); err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	user, err := svc.Get(seeded.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if user.Avatar == nil || *user.Avatar != "uploads/avatar/abc.png" {
		t.Errorf("Avatar = %v, want uploads/avatar/abc.png", user.Avatar)
	}

	if err := svc.UpdateAvatar(9999, "uploads/avatar/x.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateAvatar(absent) error = %v, want ErrNotFound", err)
	}
}
