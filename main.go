package main

import (
	"github.com/mj1618/tilewm/cmd"

	_ "github.com/mj1618/tilewm/internal/platform/windows"
)

func main() {
	cmd.Execute()
}
