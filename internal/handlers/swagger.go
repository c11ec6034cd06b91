package handlers

// @title FitCoach API
// @version 1.0
// @description AI coaching chat proxy and workout summary endpoints for gym trainers

// @contact.name API Support
// @contact.url https://github.com/your-org/fitcoach-api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @tag.name chat
// @tag.description Proxy to the AI completion API

// @tag.name summary
// @tag.description Member training and Inbody reports
