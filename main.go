package main

import (
	"os"
	_ "time/tzdata"

	"github.com/dalendar/dalendar/internal/dalendar"
)

func main() {
	os.Exit(dalendar.Main())
}
