package main

import "staffpanel/internal/app/server"

func main() {
	server.Run()
}
