// Package main はsubscriberctlのエントリーポイント。
package main

import (
	"os"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriberctl/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
