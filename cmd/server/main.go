package main

import "github.com/remonnashat24-blip/HR-Follow-Up/internal/app/server"

func main() {
	server.Run()
}
