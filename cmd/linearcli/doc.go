// Package main provides the entry point for linearcli.
//
// linearcli caches Linear reference data (teams, workflow states, users,
// projects, avatars) in ~/.linear/data.json and uses it to create and
// search issues and to print launcher-style item lists.
//
// Usage:
//
//	linearcli init lin_api_...
//	linearcli sync projects
//	linearcli create "Fix login" "" "" "" "" "Steps to reproduce"
//	linearcli search "login"
//	linearcli listprojectsforteam <team_id>
package main
