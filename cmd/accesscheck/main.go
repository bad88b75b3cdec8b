// Command accesscheck expires lapsed premium and grader access. It is a
// one-shot sweep meant to be run from an external scheduler (cron, Cloud
// Scheduler); it connects, updates, logs and exits.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

func main() {
	if err := util.LoadConfig(); err != nil {
		log.Fatal("couldn't load config: ", err)
	}
	if err := util.InitLogger(os.Getenv("ENV")); err != nil {
		log.Fatal("couldn't init logger: ", err)
	}
	if err := util.DBConnectAndPopulateDBVar(); err != nil {
		util.Log.Fatalw("couldn't connect to the database", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	premium, grader, err := store.ExpireLapsedAccess(ctx, time.Now())
	if err != nil {
		util.Log.Fatalw("access sweep failed", "error", err)
	}
	util.Log.Infow("access sweep done", "premiumExpired", premium, "graderExpired", grader)
}
