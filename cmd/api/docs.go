package main

// @title           Chat Backend API
// @version         1.0
// @description     API de identidade e persistência de conversas do aplicativo de chat

// @contact.name   API Support
// @contact.email  support@swagger.io

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Token de sessão do provedor de identidade no esquema Bearer. Exemplo: "Bearer {token}"
