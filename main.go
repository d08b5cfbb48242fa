package main

import (
	"fmt"

	_ "github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/config"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/env"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/network"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/resilience"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/schedule"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/sys"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/tui"
	_ "github.com/KhanMaytok/reddit-karma-farming-bot/words"
)

func main() {
	fmt.Println("Hi")
}
