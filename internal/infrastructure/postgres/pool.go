package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/pkg/config"
)

// Knobs del pool. Un worker de inventario abre pocas transacciones cortas
// (lotes de movimientos, ventas POS), así que el pool se mantiene pequeño.
const (
	poolMaxConns        = 25
	poolMinConns        = 2
	poolConnLifetime    = time.Hour
	poolConnIdleTime    = 30 * time.Minute
	poolHealthCheckTick = time.Minute
)

// NewPool abre el pool pgx del servicio y verifica la conexión con un ping.
// El deploy corre en contenedores sin stack IPv6 y el host de la DB puede
// resolver solo a AAAA, por eso host y dial se fuerzan a IPv4 cuando hay
// registro A disponible.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = poolMaxConns
	pc.MinConns = poolMinConns
	pc.MaxConnLifetime = poolConnLifetime
	pc.MaxConnIdleTime = poolConnIdleTime
	pc.HealthCheckPeriod = poolHealthCheckTick
	pc.ConnConfig.DialFunc = dialIPv4

	// Codec NUMERIC/DECIMAL -> shopspring/decimal en todas las conexiones:
	// precios y totales nunca pasan por float64.
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// connString arma el DSN: DATABASE_URL manda si está definido; si no, se
// construye desde las variables DB_* sueltas. En ambos casos el host se
// sustituye por su IPv4 cuando se puede resolver.
func connString(cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return urlWithIPv4Host(cfg.DatabaseURL)
	}
	if ipv4, err := lookupIPv4(cfg.Host); err == nil {
		cfg.Host = ipv4
	}
	return cfg.DSN()
}

// dialIPv4 fuerza tcp4 en el dial del pool. Si el host no tiene registro A
// se cae al dial normal, por si el resolver entrega IPv4 en runtime.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := lookupIPv4(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// lookupIPv4 resuelve un host a su dirección IPv4. El DNS del contenedor
// puede devolver solo AAAA, así que tras el resolver por defecto se intenta
// un DNS público como último recurso.
func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}

	if ips, err := net.LookupIP(host); err == nil {
		if ipv4 := firstIPv4(ips); ipv4 != "" {
			return ipv4, nil
		}
	}

	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	ips, err := fallback.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if ipv4 := firstIPv4(ips); ipv4 != "" {
		return ipv4, nil
	}
	return "", fmt.Errorf("%s sin registro A", host)
}

func firstIPv4(ips []net.IP) string {
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	return ""
}

// urlWithIPv4Host reescribe el hostname de un DATABASE_URL por su IPv4.
// Ante cualquier fallo devuelve la URL original sin tocar.
func urlWithIPv4Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	ipv4, err := lookupIPv4(u.Hostname())
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
