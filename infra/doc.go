// Package infra contains technical adapters such as the scoreboard
// transports, the telegraph MQTT client and metrics exporters. These
// packages should depend only on the interfaces defined in the core
// packages.
package infra
