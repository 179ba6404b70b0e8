package app

import (
	"context"
	"testing"

	"linkboard/internal/adapter/memory"
	"linkboard/internal/domain"
)

func TestPreferenceService_DefaultsAndSave(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize store: %v", err)
	}
	svc := NewPreferenceService(store)

	prefs, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if prefs != domain.DefaultPreferences() {
		t.Errorf("expected defaults, got %+v", prefs)
	}

	want := domain.Preferences{Title: "My board", Theme: "light", OpenInNewTab: false}
	if err := svc.Save(ctx, want); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPreferenceService_Save_RejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize store: %v", err)
	}
	svc := NewPreferenceService(store)

	if err := svc.Save(ctx, domain.Preferences{Theme: "dark"}); err == nil {
		t.Error("empty title must be rejected")
	}
	if err := svc.Save(ctx, domain.Preferences{Title: "Board"}); err == nil {
		t.Error("empty theme must be rejected")
	}
}
