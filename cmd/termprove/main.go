// Command termprove is the process entry point: it does nothing but
// hand control to internal/cli, mirroring the teacher's thin
// cmd/main.go wrapper around pkg/cmd.Execute.
package main

import "github.com/hezzel/wanda-sub001/internal/cli"

func main() {
	cli.Execute()
}
