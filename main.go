package main

import (
	"meetsync-api/core/logger"
	"meetsync-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
