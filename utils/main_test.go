package utils

import (
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/goleak"

	"github.com/cppla/linkbook/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Set(config.AppConfig{JWTSecret: "utils-test-secret", TokenTTLHours: 1})
	goleak.VerifyTestMain(m)
}
