// Package dirsizes computes the total size of every immediate entry of a directory.
//
// Subdirectories are walked recursively with fastwalk, restricted to a single
// worker so traversal stays sequential. Filesystem errors never abort a scan;
// they are collected as ErrorRecords and reported alongside the results.
package dirsizes
