package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"viz-proxy/api/internal/config"
	"viz-proxy/api/internal/engine"
	"viz-proxy/api/internal/provider"
	"viz-proxy/api/internal/store"
	"viz-proxy/api/internal/util"
	"viz-proxy/api/internal/viz"
)

const helpText = `Ask me a data question ("What is the market share of browsers?")
and I will fetch an answer, classify its shape and prepare chart data.
The reply lists the detected title, the records and the best chart types.`

func main() {
	cfg := config.Load()
	// The bot cannot run without either credential; fail at startup, not on
	// the first message.
	cfg.TelegramBotToken = config.MustEnv("TELEGRAM_BOT_TOKEN")
	cfg.GeminiAPIKey = config.MustEnv("GEMINI_API_KEY")

	eng := engine.New(cfg.ChordSeed)
	gem := provider.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		cancel()
		log.Printf("db connected")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("bot authorized as @%s", bot.Self.UserName)

	storeFor := func(chatID int64) engine.KeyValueStore {
		if db != nil {
			return store.NewChartRepo(db, "tg:"+strconv.FormatInt(chatID, 10))
		}
		return store.NewMemStore()
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for update := range bot.GetUpdatesChan(u) {
		msg := update.Message
		if msg == nil || msg.Text == "" {
			continue
		}
		if msg.IsCommand() {
			send(bot, msg.Chat.ID, helpText)
			continue
		}
		go answer(bot, eng, gem, storeFor(msg.Chat.ID), msg.Chat.ID, msg.Text)
	}
}

func answer(bot *tgbotapi.BotAPI, eng *engine.Engine, gem *provider.Gemini, kv engine.KeyValueStore, chatID int64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	data, err := gem.Ask(ctx, query)
	if err != nil {
		send(bot, chatID, "Could not reach the model: "+err.Error())
		return
	}

	res, err := eng.ProcessAndPersist(ctx, data, query, kv)
	if err != nil {
		log.Printf("persist: %v", err)
	}
	if res.IsInvalid {
		send(bot, chatID, "The model declined to answer; nothing to chart.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", res.Title, res.Source)
	for i, r := range flatRecords(res) {
		if i >= 8 {
			b.WriteString("…\n")
			break
		}
		fmt.Fprintf(&b, "• %s: %.4g\n", util.Truncate(r.Name, 40), r.Value)
	}
	b.WriteString("\nSuggested charts: ")
	var names []string
	for _, rec := range viz.Recommend(query, fmt.Sprintf("%v", data)) {
		names = append(names, string(rec.Chart))
	}
	b.WriteString(strings.Join(names, ", "))
	send(bot, chatID, b.String())
}

func flatRecords(res viz.Result) []viz.Record {
	if res.IsHierarchical && res.Tree != nil {
		return viz.Flatten(*res.Tree)
	}
	return res.Records
}

func send(bot *tgbotapi.BotAPI, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("send: %v", err)
	}
}
