//go:build integration

package leaderboardintegrationtests

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/DanielWijono/minton3t-ranking/integration_tests/testutils"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	ctx := context.Background()

	env, err := testutils.NewTestEnvironment(ctx)
	if err != nil {
		log.Printf("Failed to set up test environment: %v", err)
		os.Exit(1)
	}
	testEnv = env

	code := m.Run()

	testEnv.Cleanup()
	os.Exit(code)
}
