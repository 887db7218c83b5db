package main

import "legiscrape-backend/cmd/legiscrape/cmd"

func main() {
	cmd.Execute()
}
