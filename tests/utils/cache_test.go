package utils_test

import (
	"testing"
	"time"

	"fleetwatch/src/utils"
)

func TestCache(t *testing.T) {
	t.Run("should return the cached string value if valid", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 1*time.Minute)

		value, found := cache.Get()
		if !found || value != "test value" {
			t.Error("expected 'test value', got", value)
		}
	})

	t.Run("should return a zero value if the cache is expired", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 10*time.Millisecond)
		time.Sleep(50 * time.Millisecond)

		value, found := cache.Get()
		if found {
			t.Error("expected cache miss, got", value)
		}
	})

	t.Run("should return a zero value before anything is set", func(t *testing.T) {
		cache := utils.NewCache[string]()

		value, found := cache.Get()
		if found {
			t.Error("expected cache miss, got", value)
		}
	})

	t.Run("should return a zero value after clear", func(t *testing.T) {
		cache := utils.NewCache[int]()
		cache.Set(42, 1*time.Minute)
		cache.Clear()

		value, found := cache.Get()
		if found {
			t.Error("expected cache miss after clear, got", value)
		}
	})

	t.Run("should return the cached struct value if valid", func(t *testing.T) {
		type ControllerState struct {
			Name   string
			Online bool
		}
		cache := utils.NewCache[ControllerState]()
		state := ControllerState{Name: "cell-4-robot-1", Online: true}
		cache.Set(state, 1*time.Minute)

		value, found := cache.Get()
		if !found || value.Name != "cell-4-robot-1" {
			t.Errorf("expected 'cell-4-robot-1', got %+v", value)
		}
	})
}
