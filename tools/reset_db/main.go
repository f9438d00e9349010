package main

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"strconv"

	"social-system/config"

	"github.com/go-sql-driver/mysql"
)

// 子表在前，user 最后
var tables = []string{"post_like", "follow_request", "follow", "post", "user"}

func main() {
	// Load configuration (config/config.yaml + env)
	cfg := config.LoadConfig().Database
	if cfg.Driver != "mysql" {
		log.Fatalf("reset_db only supports mysql, configured driver is %q", cfg.Driver)
	}

	dsn := cfg.DSN
	if dsn == "" {
		mc := mysql.NewConfig()
		mc.User = cfg.Username
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Database
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": cfg.Charset}
		dsn = mc.FormatDSN()
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database connection test failed: %v", err)
	}

	fmt.Println("Database connected successfully")
	fmt.Printf("Database: %s\n", cfg.Database)

	// Confirm
	fmt.Printf("\nWARNING: This operation will CLEAR ALL DATA in tables %v!\n", tables)
	fmt.Print("Type 'YES' to confirm: ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "YES" {
		fmt.Println("Operation cancelled")
		return
	}

	failed := 0
	for _, table := range tables {
		fmt.Printf("Clearing table %s... ", table)
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM `%s`", table)); err != nil {
			failed++
			fmt.Printf("Failed: %v\n", err)
		} else {
			fmt.Println("Success")
		}
	}

	if failed > 0 {
		log.Fatalf("Database reset finished with %d failed table(s)", failed)
	}
	fmt.Println("\nDatabase reset completed!")
	fmt.Println("All table data cleared, table structure preserved")
}
