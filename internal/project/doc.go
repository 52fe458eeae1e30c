// Package project manages an analysis project folder: a project.gta file
// naming the project, a models/ folder with model specifications and a
// parameters/ folder with parameter sets.
package project
