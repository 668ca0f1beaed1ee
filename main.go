package main

import (
	"github.com/biosecret/task-tracker/app"
)

// @title Task Tracker API
// @version 1.0
// @description Quản lý người dùng và task.
// @BasePath /
func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
