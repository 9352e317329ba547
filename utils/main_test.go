package utils_test

import (
	"coursex/config"
	"coursex/database"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()
	os.Exit(m.Run())
}
