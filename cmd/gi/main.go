// gi generates .gitignore files from the github/gitignore template
// collection.
package main

import "github.com/sempervent/gi/internal/cli"

func main() {
	cli.Execute()
}
