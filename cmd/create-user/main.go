// The create-user binary provisions a POS user: it hashes the password and
// writes the user record to the users table. Without a table (flag or
// USERS_TABLE) it performs a dry run and prints the would-be record.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/joeshaw/envdecode"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

// Service holds the configuration for this utility
type Service struct {
	UsersTable string `env:"USERS_TABLE,optional" description:"the DynamoDB table for users"`
	AWSRegion  string `env:"AWS_REGION,default=us-east-1" description:"the AWS region"`
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func usageAndExit() {
	fmt.Println("Usage: create-user --email EMAIL --name NAME --password PASSWORD [--table TABLE] [--dry-run]")
	os.Exit(1)
}

func main() {
	email := flag.String("email", "", "the user's email address")
	name := flag.String("name", "", "the user's display name")
	password := flag.String("password", "", "the user's password, hashed before storage")
	table := flag.String("table", "", "the users table, defaults to USERS_TABLE")
	dryRun := flag.Bool("dry-run", false, "print the would-be record instead of writing it")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		usageAndExit()
	}

	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}
	tableName := *table
	if tableName == "" {
		tableName = service.UsersTable
	}

	now := record.Timestamp(time.Now())
	user := record.Record{
		"email":               *email,
		"userId":              uuid.NewString(),
		"name":                *name,
		"password":            hashPassword(*password),
		record.FieldID:        *email,
		record.FieldCreatedAt: now,
		record.FieldUpdatedAt: now,
	}

	if *dryRun || tableName == "" {
		fmt.Println("Dry run: user record to insert:")
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Println(string(data))
		if tableName == "" {
			fmt.Println()
			fmt.Println("Note: no table specified (use --table or set USERS_TABLE) - dry-run only.")
		}
		return
	}

	db, err := store.NewDynamoDB(store.DynamoDBConfiguration{AWSRegion: service.AWSRegion})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create user:", err)
		os.Exit(2)
	}
	if err := db.Put(context.Background(), tableName, user); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create user:", err)
		os.Exit(2)
	}
	fmt.Println("User created successfully in table", tableName)
	fmt.Printf("email: %s userId: %s\n", user["email"], user["userId"])
}
