package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	"github.com/hugohenrick/chat-backend/pkg/provider"
)

// ErrMissingSecret indica que a chave de verificação de sessão não foi configurada
var ErrMissingSecret = errors.New("chave de verificação de sessão não configurada")

// SessionCookieName é o cookie de sessão emitido pelo provedor para clientes web
const SessionCookieName = "__session"

// Config contém as configurações do provedor remoto de identidade
type Config struct {
	// Secret é a chave usada para verificar a assinatura do token de sessão
	Secret string
	// BaseURL é a URL base da API do provedor (busca de perfil)
	BaseURL string
	// APIKey é a credencial de servidor para a API do provedor
	APIKey string
	// Timeout das chamadas HTTP ao provedor
	Timeout time.Duration
}

// NewConfigFromEnv cria a configuração a partir de variáveis de ambiente
func NewConfigFromEnv() Config {
	timeout := 5 * time.Second
	if v := os.Getenv("IDP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	return Config{
		Secret:  os.Getenv("IDP_SESSION_SECRET"),
		BaseURL: getEnv("IDP_API_URL", "https://api.clerk.com"),
		APIKey:  os.Getenv("IDP_API_KEY"),
		Timeout: timeout,
	}
}

// RemoteProvider implementa provider.Provider contra um provedor SaaS de
// identidade: a sessão é um JWT assinado pelo provedor e o perfil é lido da
// API REST do provedor
type RemoteProvider struct {
	secret  []byte
	baseURL string
	apiKey  string
	client  *http.Client
	log     logger.Logger
}

// NewRemoteProvider cria uma nova instância de RemoteProvider
func NewRemoteProvider(cfg Config, log logger.Logger) (*RemoteProvider, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &RemoteProvider{
		secret:  []byte(cfg.Secret),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}, nil
}

// VerifySession implementa provider.Provider.VerifySession.
// O token é procurado no cabeçalho Authorization (Bearer) e, na ausência dele,
// no cookie de sessão usado pelos clientes web do provedor.
func (p *RemoteProvider) VerifySession(r *http.Request) (*provider.Principal, error) {
	raw := sessionToken(r)
	if raw == "" {
		return nil, provider.ErrNoSession
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, provider.ErrNoSession
	}
	if claims.Subject == "" {
		return nil, provider.ErrNoSession
	}

	return &provider.Principal{ID: claims.Subject}, nil
}

// profileResponse espelha o payload de usuário da API do provedor
type profileResponse struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// FetchProfile implementa provider.Provider.FetchProfile
func (p *RemoteProvider) FetchProfile(ctx context.Context, principalID string) (*provider.Profile, error) {
	url := fmt.Sprintf("%s/v1/users/%s", p.baseURL, principalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("falha ao montar requisição de perfil: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("falha ao consultar perfil no provedor", "principal_id", principalID, "error", err)
		return nil, provider.ErrProfileUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn("provedor retornou status inesperado para perfil", "principal_id", principalID, "status", resp.StatusCode)
		return nil, provider.ErrProfileUnavailable
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, provider.ErrProfileUnavailable
	}

	profile := &provider.Profile{
		GivenName:  body.FirstName,
		FamilyName: body.LastName,
		Avatar:     body.ImageURL,
	}
	if len(body.EmailAddresses) > 0 {
		profile.Email = body.EmailAddresses[0].EmailAddress
	}
	return profile, nil
}

// sessionToken extrai o token de sessão da requisição
func sessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
