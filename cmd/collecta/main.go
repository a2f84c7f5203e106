// cmd/collecta/main.go
package main

import "github.com/Annany2002/collecta-backend/cmd/collecta/commands"

func main() {
	commands.Execute()
}
