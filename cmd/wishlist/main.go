// Command wishlist manages wishlist categories and items from the shell.
package main

import "github.com/mesh-intelligence/wishlist/internal/cli"

func main() {
	cli.Execute()
}
