package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGrindFindsPrefix(t *testing.T) {
	logger = zap.NewNop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	w, attempts, err := grind(ctx, "A", false, 4)
	require.NoError(t, err)
	require.NotNil(t, w)
	require.True(t, strings.HasPrefix(w.PublicKey().String(), "A"))
	require.NotZero(t, attempts)
}

func TestGrindIgnoreCase(t *testing.T) {
	logger = zap.NewNop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	w, _, err := grind(ctx, "a", true, 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.ToLower(w.PublicKey().String()), "a"))
}

func TestGrindCancelled(t *testing.T) {
	logger = zap.NewNop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := grind(ctx, strings.Repeat("Z", 10), false, 1)
	require.Error(t, err)
}
