package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateCode()
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(codeCharset, r) {
				t.Fatalf("code %q contains %q outside the charset", code, r)
			}
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code %q is not uppercase", code)
		}
	}
}

func TestDailyCodeActiveFor(t *testing.T) {
	tests := []struct {
		name string
		code *models.DailyCode
		date string
		want bool
	}{
		{"nil record", nil, "2026-03-16", false},
		{"matching date", &models.DailyCode{Code: "AB12CD", DateString: "2026-03-16"}, "2026-03-16", true},
		{"stale date", &models.DailyCode{Code: "AB12CD", DateString: "2026-03-15"}, "2026-03-16", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.ActiveFor(tt.date); got != tt.want {
				t.Errorf("ActiveFor(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestDailyCodeServiceCurrent(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.Local)
	codes := &fakeCodes{}
	svc := NewDailyCodeService(codes)
	svc.Now = func() time.Time { return now }

	current, err := svc.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current != nil {
		t.Errorf("no record yet, Current() = %+v", current)
	}

	codes.latest = &models.DailyCode{Code: "AB12CD", DateString: "2026-03-15"}
	current, err = svc.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current != nil {
		t.Error("yesterday's record must read as inactive")
	}

	codes.latest = &models.DailyCode{Code: "AB12CD", DateString: "2026-03-16"}
	current, err = svc.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current == nil || current.Code != "AB12CD" {
		t.Errorf("Current() = %+v", current)
	}
}

func TestDailyCodeServiceEnsureForToday(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.Local)
	codes := &fakeCodes{}
	svc := NewDailyCodeService(codes)
	svc.Now = func() time.Time { return now }

	first, created, err := svc.EnsureForToday()
	if err != nil {
		t.Fatalf("EnsureForToday() error = %v", err)
	}
	if !created || first == nil || first.DateString != "2026-03-16" {
		t.Errorf("first ensure: created = %v, code = %+v", created, first)
	}

	second, created, err := svc.EnsureForToday()
	if err != nil {
		t.Fatalf("EnsureForToday() error = %v", err)
	}
	if created {
		t.Error("second ensure must reuse the active code")
	}
	if second.Code != first.Code {
		t.Errorf("second ensure returned %q, want %q", second.Code, first.Code)
	}
}

func TestGenerateForTodaySupersedes(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.Local)
	codes := &fakeCodes{latest: &models.DailyCode{Code: "OLD001", DateString: "2026-03-16"}}
	svc := NewDailyCodeService(codes)
	svc.Now = func() time.Time { return now }

	fresh, err := svc.GenerateForToday()
	if err != nil {
		t.Fatalf("GenerateForToday() error = %v", err)
	}
	if fresh.DateString != "2026-03-16" {
		t.Errorf("DateString = %q", fresh.DateString)
	}
	if codes.latest.Code != fresh.Code {
		t.Error("new record must become the latest one")
	}
}
