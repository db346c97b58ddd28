// Package mcpserver exposes the fail2ban client as Model Context Protocol
// tools, so an agent can inspect jails and ban or unban addresses over
// stdio.
//
// The tools are:
//
//   - list_jails: every jail with its ban count and settings
//   - get_jail: one jail with its banned addresses, optionally filtered
//   - ban_ip: ban an address in a jail
//   - unban_ip: unban an address from a jail
//
// Every tool call runs the fail2ban commands synchronously and answers with
// JSON text. Failures are reported as tool errors, never as protocol errors.
package mcpserver
