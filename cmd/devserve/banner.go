package main

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/creamcroissant/devserve/internal/cert"
	"github.com/creamcroissant/devserve/internal/config"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	styleValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// printBanner writes the human-facing startup summary: access URLs plus the
// warnings a dev needs up front (self-signed trust prompt, wildcard CORS).
func printBanner(w io.Writer, cfg *config.Config, material *cert.Material) {
	port := strconv.Itoa(cfg.Server.Port)
	localURL := "https://" + net.JoinHostPort(displayHost(cfg.Server.Host), port)

	lines := []string{
		styleTitle.Render("devserve — HTTPS dev server running"),
		"",
		row("Local URL", localURL),
	}

	if ip := cert.LocalIP(); ip != "" {
		networkURL := "https://" + net.JoinHostPort(ip, port)
		if cfg.Server.Host == "0.0.0.0" {
			lines = append(lines,
				row("Network URL", networkURL),
				row("Network", "enabled — reachable from other devices"))
		} else {
			lines = append(lines,
				row("Network URL", networkURL+" (not reachable — rerun with --network)"))
		}
	}

	lines = append(lines, row("Document root", cfg.Root.Dir))

	if material.Temporary {
		lines = append(lines, "",
			styleWarn.Render("Self-signed certificate: the browser will warn once;"),
			styleWarn.Render(`choose "Advanced" and proceed to accept it.`))
	} else {
		lines = append(lines, row("Certificate", material.CertFile))
	}

	if cfg.Security.AllowedOrigin == "*" {
		lines = append(lines, "",
			styleWarn.Render("CORS allows any origin (development default);"),
			styleWarn.Render("set security.allowed_origin to lock this down."))
	}

	lines = append(lines, "", styleValue.Render("Press Ctrl+C to stop."))

	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		styleLabel.Render(label), styleValue.Render(value))
}

// displayHost turns the wildcard bind address into something clickable.
func displayHost(host string) string {
	if host == "0.0.0.0" || host == "::" || strings.TrimSpace(host) == "" {
		return "localhost"
	}
	return host
}
